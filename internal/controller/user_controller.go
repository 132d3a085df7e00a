package controller

import (
	"errors"

	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService       *service.UserService
	SubmissionService *service.SubmissionService
}

func NewUserController(userService *service.UserService, submissionService *service.SubmissionService) *UserController {
	return &UserController{
		UserService:       userService,
		SubmissionService: submissionService,
	}
}

// GetUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 401 {object} util.Response
// @Router /api/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	users, err := c.UserService.GetUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, users)
}

// GetResults godoc
// @Summary List student results for an assignment
// @Tags users
// @Produce json
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} util.Response{data=[]repository.SubmissionView}
// @Failure 404 {object} util.Response
// @Router /api/users/results/{assignmentId} [get]
func (c *UserController) GetResults(ctx *gin.Context) {
	assignmentID := util.MustParseUint(ctx.Param("assignmentId"))

	views, err := c.SubmissionService.ListByAssignment(assignmentID)
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

// DeleteUser godoc
// @Summary Delete a user by id
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.UserService.DeleteUser(id); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
