package handlers

import (
	"net/http"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService *services.GameService
	leaderboard *services.LeaderboardService
}

func NewGameHandler(gameService *services.GameService, leaderboard *services.LeaderboardService) *GameHandler {
	return &GameHandler{gameService: gameService, leaderboard: leaderboard}
}

type StartGameRequest struct {
	Category string `json:"category" binding:"required" example:"vasita"`
}

type GuessRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Guess     string `json:"guess" binding:"required" example:"250000"`
}

type AdvanceRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Start godoc
// @Summary      Start a game session
// @Description  Fetches up to 50 approved listings for the category, shuffles them and presents the first round
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        request body StartGameRequest true "Category, 'all' for everything"
// @Success      200 {object} services.GameState
// @Failure      404 {object} ErrorResponse "no approved listings in category"
// @Router       /api/v1/game/start [post]
func (h *GameHandler) Start(c *gin.Context) {
	var req StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.gameService.Start(c.GetUint("user_id"), req.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Guess godoc
// @Summary      Submit a price guess
// @Description  Scores the guess against the actual price and reveals the result
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        request body GuessRequest true "Session and raw guess input"
// @Success      200 {object} services.GameState
// @Failure      400 {object} ErrorResponse "non-numeric guess"
// @Router       /api/v1/game/guess [post]
func (h *GameHandler) Guess(c *gin.Context) {
	var req GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.gameService.Guess(req.SessionID, req.Guess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Next godoc
// @Summary      Advance to the next round
// @Description  Moves past a shown result; completes the session after the last listing and persists the score
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        request body AdvanceRequest true "Session"
// @Success      200 {object} services.GameState
// @Router       /api/v1/game/next [post]
func (h *GameHandler) Next(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.gameService.Next(req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// PlayAgain godoc
// @Summary      Replay the same category
// @Description  Re-fetches and re-shuffles the candidates for a completed session
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        request body AdvanceRequest true "Session"
// @Success      200 {object} services.GameState
// @Router       /api/v1/game/again [post]
func (h *GameHandler) PlayAgain(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.gameService.PlayAgain(req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// State godoc
// @Summary      Get current session state
// @Tags         game
// @Produce      json
// @Param        session_id query string true "Session ID"
// @Success      200 {object} services.GameState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/game/state [get]
func (h *GameHandler) State(c *gin.Context) {
	state, err := h.gameService.State(c.Query("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Leaderboard godoc
// @Summary      Monthly leaderboard
// @Description  Top 10 scores since the first of the current month
// @Tags         game
// @Produce      json
// @Success      200 {array} services.LeaderboardEntry
// @Router       /api/v1/game/leaderboard [get]
func (h *GameHandler) Leaderboard(c *gin.Context) {
	entries, err := h.leaderboard.MonthlyTop()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
