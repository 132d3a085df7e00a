package controller

import (
	"errors"

	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Service *service.SubmissionService
}

func NewSubmissionController(svc *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Service: svc}
}

// Submit godoc
// @Summary Submit answers for an assignment and get the auto-graded score
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitRequest true "Answers"
// @Success 201 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// Regrade godoc
// @Summary Re-grade a submission from per-answer scores
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RegradeRequest true "Per-answer grades"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/submissions/grade [patch]
func (c *SubmissionController) Regrade(ctx *gin.Context) {
	var req service.RegradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	total, err := c.Service.Regrade(req)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"totalScore": total})
}

// ListByAssignment godoc
// @Summary List all submissions for an assignment
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} util.Response{data=[]repository.SubmissionView}
// @Failure 404 {object} util.Response
// @Router /api/submissions/submission/{assignmentId} [get]
func (c *SubmissionController) ListByAssignment(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))

	views, err := c.Service.ListByAssignment(assignmentID)
	if err != nil {
		if errors.Is(err, util.ErrNoSubmissions) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// GetByID godoc
// @Summary Get a submission by id
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} util.Response{data=repository.SubmissionView}
// @Failure 404 {object} util.Response
// @Router /api/submissions/{id} [get]
func (c *SubmissionController) GetByID(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	view, err := c.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// Delete godoc
// @Summary Delete a submission and its answer records
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/submissions/{id} [delete]
func (c *SubmissionController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Delete(id); err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
