package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"eve-pricebot/internal/config"
	"eve-pricebot/internal/discord"
	"eve-pricebot/internal/engine"
	"eve-pricebot/internal/logger"
)

// Comparer runs one price comparison.
type Comparer interface {
	Compare(ctx context.Context, systemName, itemName string) (*engine.ComparisonReport, error)
}

// Responder delivers the final message of a deferred interaction.
type Responder interface {
	EditOriginal(ctx context.Context, token string, msg discord.WebhookMessage) error
}

// Server is the Discord interactions endpoint. It verifies requests, answers
// pings and runs /price comparisons in the background.
type Server struct {
	cfg       *config.Config
	comparer  Comparer
	responder Responder
	verifier  *discord.Verifier

	// pending tracks comparisons still running after their deferred reply.
	pending sync.WaitGroup
}

// NewServer creates a Server.
func NewServer(cfg *config.Config, comparer Comparer, responder Responder, verifier *discord.Verifier) *Server {
	return &Server{
		cfg:       cfg,
		comparer:  comparer,
		responder: responder,
		verifier:  verifier,
	}
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	for _, path := range []string{"/", "/api/interactions"} {
		r.GET(path, s.handleHealth)
		r.POST(path, s.handleInteraction)
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down and waits for
// background comparisons to deliver their results.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Server(s.cfg.Server.Addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("API", "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Wait()
	return err
}

// Wait blocks until every background comparison has finished.
func (s *Server) Wait() {
	s.pending.Wait()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) handleInteraction(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}
	sig := c.GetHeader("X-Signature-Ed25519")
	ts := c.GetHeader("X-Signature-Timestamp")
	if s.verifier == nil || !s.verifier.Verify(sig, ts, body) {
		c.String(http.StatusUnauthorized, "invalid request signature")
		return
	}

	var in discord.Interaction
	if err := json.Unmarshal(body, &in); err != nil {
		c.String(http.StatusBadRequest, "malformed interaction")
		return
	}

	switch {
	case in.Type == discord.InteractionPing:
		c.JSON(http.StatusOK, discord.InteractionResponse{Type: discord.ResponsePong})
	case in.Type == discord.InteractionApplicationCommand && in.Data != nil && in.Data.Name == discord.PriceCommandName:
		system := in.Data.StringOption("system")
		item := in.Data.StringOption("item")
		c.JSON(http.StatusOK, discord.InteractionResponse{Type: discord.ResponseDeferredChannelMessage})
		c.Writer.Flush()

		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			s.runPrice(in.Token, system, item)
		}()
	default:
		c.String(http.StatusBadRequest, "unknown interaction type")
	}
}

// runPrice performs the comparison detached from the inbound request and edits
// the deferred reply with either the embed or a user-facing error.
func (s *Server) runPrice(token, system, item string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.CommandTimeout)
	defer cancel()

	var msg discord.WebhookMessage
	rep, err := s.comparer.Compare(ctx, system, item)
	if err != nil {
		msg.Content = discord.ErrorContent(err)
	} else {
		msg.Embeds = []discord.Embed{discord.BuildPriceEmbed(rep)}
	}

	if err := s.responder.EditOriginal(ctx, token, msg); err != nil {
		logger.Error("DISCORD", fmt.Sprintf("Edit original response: %v", err))
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("API", fmt.Sprintf("%s %s %d %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond)))
	}
}
