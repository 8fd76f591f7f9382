package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	generateTimeout = 5 * time.Second
	lookupTimeout   = 500 * time.Millisecond
)

// MazeController serves maze generation and lookup.
type MazeController struct {
	generator i.MazeGenerator
}

// NewMazeController initializes a MazeController.
func NewMazeController(g i.MazeGenerator) (*MazeController, error) {
	if g == nil {
		return nil, errors.New("nil maze generator")
	}
	return &MazeController{
		generator: g,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/mazes/:ID", mc.mazeByID)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/mazes", mc.generate)
}

// generate handles maze generation requests.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), generateTimeout)
	defer cancel()

	record, err := mc.generator.Generate(timeoutCtx, request.Dimension, request.Seed)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, responseFromRecord(record))
	case errors.Is(err, maze.ErrInvalidDimension):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrUnreachable):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while generating maze"})
	}
}

// mazeByID retrieves a previously generated maze.
func (mc *MazeController) mazeByID(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), lookupTimeout)
	defer cancel()

	record, err := mc.generator.ByID(timeoutCtx, ID)
	if errors.Is(err, service.ErrMazeNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "maze not found"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading maze"})
		return
	}

	ctx.JSON(http.StatusOK, responseFromRecord(record))
}
