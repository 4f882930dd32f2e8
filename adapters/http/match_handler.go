package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	matchUC "github.com/kindled/kindled/internal/application/usecase/match"
	"github.com/kindled/kindled/pkg/apperror"
)

type MatchHandler struct {
	castVoteUseCase *matchUC.CastVoteUseCase
}

func NewMatchHandler(castVoteUC *matchUC.CastVoteUseCase) *MatchHandler {
	return &MatchHandler{castVoteUseCase: castVoteUC}
}

// CastVote records a like from the authenticated client to the target in
// the path. All four outcomes are reported with 200; only precondition
// violations are errors.
func (h *MatchHandler) CastVote(c *gin.Context) {
	voterID, ok := GetClientIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("client identity not found in context"))
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid client id", err))
		return
	}

	output, err := h.castVoteUseCase.Execute(c.Request.Context(), matchUC.CastVoteInput{
		VoterID:  voterID,
		TargetID: targetID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcome": output.Outcome})
}
