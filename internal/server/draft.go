package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/invoicely/internal/invoice/draft"
	invoicedomain "github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/usercontext"
)

// OpenDraftSession starts a debounced autosave session for one invoice. The
// returned session id scopes all further draft calls; sessions die with the
// process, they are editor state, not durable state.
func (s *Server) OpenDraftSession(c *gin.Context) {
	userID, ok := usercontext.UserIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	invoiceID := c.Param("id")
	if _, err := s.invoiceSvc.GetByID(c.Request.Context(), invoiceID); err != nil {
		AbortWithError(c, err)
		return
	}

	saver := draft.SaverFunc(func(ctx context.Context, inv invoicedomain.Invoice) error {
		ctx = usercontext.WithUserID(ctx, int64(userID))
		template := inv.Template
		_, err := s.invoiceSvc.Update(ctx, invoiceID, invoicedomain.UpdateRequest{
			Sender:   &inv.Sender,
			Receiver: &inv.Receiver,
			Details:  &inv.Details,
			Template: &template,
		})
		return err
	})

	session := draft.NewSession(saver, s.log, draft.DefaultConfig())

	s.draftMu.Lock()
	s.drafts[session.ID()] = &draftSession{
		session:   session,
		invoiceID: invoiceID,
		userID:    userID,
	}
	s.draftMu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"session_id": session.ID()}})
}

func (s *Server) TriggerDraftSave(c *gin.Context) {
	entry := s.draftSessionFor(c)
	if entry == nil {
		return
	}

	var inv invoicedomain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	entry.session.Trigger(inv)
	c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"session_id": entry.session.ID()}})
}

func (s *Server) FlushDraftSession(c *gin.Context) {
	entry := s.draftSessionFor(c)
	if entry == nil {
		return
	}

	if err := entry.session.Flush(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), entry.invoiceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) CloseDraftSession(c *gin.Context) {
	entry := s.draftSessionFor(c)
	if entry == nil {
		return
	}

	entry.session.Stop()
	s.draftMu.Lock()
	delete(s.drafts, entry.session.ID())
	s.draftMu.Unlock()

	c.Status(http.StatusNoContent)
}

func (s *Server) draftSessionFor(c *gin.Context) *draftSession {
	userID, ok := usercontext.UserIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return nil
	}

	sessionID := strings.TrimSpace(c.Param("sessionId"))
	s.draftMu.Lock()
	entry := s.drafts[sessionID]
	s.draftMu.Unlock()

	if entry == nil || entry.userID != userID {
		AbortWithError(c, ErrNotFound)
		return nil
	}
	return entry
}
