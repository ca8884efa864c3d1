package controller

import (
	"errors"

	"github.com/benbeisheim/chessgame-backend/internal/model"
	"github.com/benbeisheim/chessgame-backend/internal/service"
	"github.com/benbeisheim/chessgame-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Post("/create", gc.CreateGame)
	router.Post("/join/:gameId", gc.JoinGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Get("/:gameId/moves", gc.PossibleMoves)
	router.Post("/:gameId/select", gc.SelectSquare)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/click", gc.Click)
	router.Post("/:gameId/new", gc.NewGame)
	router.Post("/:gameId/reset", gc.NewGame)
	router.Post("/:gameId/undo", gc.Undo)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidSquare):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotYourTurn), errors.Is(err, service.ErrNotAPlayer):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameOver), errors.Is(err, service.ErrGameFull):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, color, err := gc.gameService.CreateGame(playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	snap, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}

func (gc *GameController) PossibleMoves(c *fiber.Ctx) error {
	snap, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"possibleMoves": snap.PossibleMoves,
	})
}

func (gc *GameController) SelectSquare(c *fiber.Ctx) error {
	var sq model.Square
	if err := c.BodyParser(&sq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid square"})
	}
	moves, err := gc.gameService.SelectSquare(c.Params("gameId"), playerID(c), sq)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"legalMoves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid move"})
	}
	snap, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), move.From, move.To)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}

func (gc *GameController) Click(c *fiber.Ctx) error {
	var sq model.Square
	if err := c.BodyParser(&sq); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid square"})
	}
	snap, err := gc.gameService.HandleClick(c.Params("gameId"), playerID(c), sq)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}

func (gc *GameController) NewGame(c *fiber.Ctx) error {
	snap, err := gc.gameService.NewGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	snap, err := gc.gameService.Undo(c.Params("gameId"), playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}
