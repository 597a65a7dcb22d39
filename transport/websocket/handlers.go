package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/omok-labs/gomoku-backend/internal/apperror"
	"github.com/omok-labs/gomoku-backend/internal/entity"
)

const actionGameLeave = "game:leave"

func (that *Server) handleConnect(ctx context.Context, conn *playerConn, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.registerConnection(player.ID, conn)

	payloadResp := Payload{Player: player}

	// a reconnecting player gets the current game state back
	if player.GameID != "" {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if err != nil {
			log.Error("failed to get game", "gameID", player.GameID, "error", err)
			return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
		}

		payloadResp.Game = game
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, conn *playerConn, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := that.requirePlayer(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	gameType := entity.PrivateType
	if payloadReq.Game != nil && payloadReq.Game.Type != "" {
		gameType = payloadReq.Game.Type
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID, gameType)
	if err != nil {
		log.Error("failed to get or create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	log.Info("game created", "gameID", game.ID)

	that.broadcastGame(msg.Action, game)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, conn *playerConn, msg *Message) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := that.requirePlayer(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game id is required")
	}

	that.registerConnection(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.JoinGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "gameID", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", payloadReq.Game.ID, err))
	}

	log.Info("player joined game", "gameID", game.ID, "playerID", payloadReq.Player.ID)

	that.broadcastGame(msg.Action, game)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, conn *playerConn, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := that.requirePlayer(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payloadReq.Move == nil {
		return that.sendErrorResponse(conn, msg.Action, "move is required")
	}

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, payloadReq.Move.Row, payloadReq.Move.Col)
	if isRejectedMove(err) {
		// rejected moves go back to the mover only; the board did not change
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to make turn", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to make turn")
	}

	that.broadcastGame(msg.Action, game)

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, conn *playerConn, msg *Message) error {
	log := that.logger.With("method", "handleGameReset")

	payloadReq, err := that.requirePlayer(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	game, err := that.gameUseCase.ResetGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to reset game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to reset game")
	}

	log.Info("game reset", "gameID", game.ID)

	that.broadcastGame(msg.Action, game)

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, conn *playerConn, msg *Message) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := that.requirePlayer(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to get game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to leave game")
	}

	if err = that.gameUseCase.LeaveGame(ctx, payloadReq.Player.ID); err != nil {
		log.Error("failed to leave game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to leave game")
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		opponentConn, ok := that.connectionByPlayerID(player.ID)
		if !ok {
			continue
		}

		if err = that.sendMessage(opponentConn, actionGameLeave, Payload{Player: player}); err != nil {
			log.Error("failed to send leave notice", "playerID", player.ID, "error", err)
		}
	}

	return nil
}

// requirePlayer - pulls the payload out of the message and checks that
// a player with an ID is present.
func (that *Server) requirePlayer(msg *Message) (*Payload, error) {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil || payloadReq.Player.ID == "" {
		return nil, errors.New("player is required")
	}

	return &payloadReq, nil
}

// broadcastGame - fans the updated game state out to every connected
// human player in the game.
func (that *Server) broadcastGame(action string, game *entity.Game) {
	log := that.logger.With("method", "broadcastGame", "gameID", game.ID)

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		conn, ok := that.connectionByPlayerID(player.ID)
		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payloadResp := Payload{
			Player: player,
			Game:   game,
		}

		if err := that.sendMessage(conn, action, payloadResp); err != nil {
			log.Error("failed to send game update", "playerID", player.ID, "error", err)
		}
	}
}

func (that *Server) sendMessage(conn *playerConn, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *playerConn, action, message string) error {
	return that.sendMessage(conn, action, Payload{Error: message})
}

// isRejectedMove - reports whether the error is a move rejected by the
// rules rather than an infrastructure failure.
func isRejectedMove(err error) bool {
	return errors.Is(err, apperror.ErrOutOfBounds) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrGameIsNotStarted)
}
