package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invest_portal/internal/core/flows"
	"github.com/SscSPs/invest_portal/internal/dto"
	"github.com/SscSPs/invest_portal/internal/middleware"
	"github.com/SscSPs/invest_portal/internal/portal"
	"github.com/gin-gonic/gin"
)

// wizardFlow is the part of a flow the HTTP layer drives. P is the patch type
// and V the view.
type wizardFlow[P any, V any] interface {
	Next(ctx context.Context, patch P) error
	Back(ctx context.Context) error
	Submit(ctx context.Context, patch P) error
	Reset(ctx context.Context) error
	View() V
}

// flowBinding connects one flow of a profile to its routes.
type flowBinding[P any, V any] struct {
	name   string
	flow   func(p *portal.Profile) wizardFlow[P, V]
	update func(ctx context.Context, p *portal.Profile, patch P) error
}

// flowHandler serves GET /flows/<name> and the step transitions.
type flowHandler[P any, V any] struct {
	registry *portal.Registry
	binding  flowBinding[P, V]
}

func registerFlow[P any, V any](rg *gin.RouterGroup, registry *portal.Registry, binding flowBinding[P, V]) *gin.RouterGroup {
	h := &flowHandler[P, V]{registry: registry, binding: binding}

	g := rg.Group("/flows/" + binding.name)
	{
		g.GET("", h.view)
		g.POST("", h.update)
		g.POST("/next", h.next)
		g.POST("/back", h.back)
		g.POST("/submit", h.submit)
		g.POST("/reset", h.reset)
	}
	return g
}

// bindPatch decodes an optional JSON patch. An empty body is an empty patch.
func bindPatch[P any](c *gin.Context, patch *P) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(patch); err != nil && !errors.Is(err, io.EOF) {
		middleware.GetLoggerFromContext(c).Warn("Failed to bind flow patch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// respond writes the flow view. A failed step keeps its message in the view.
func (h *flowHandler[P, V]) respond(c *gin.Context, p *portal.Profile, err error) {
	status := statusFor(err)
	if err != nil {
		middleware.GetLoggerFromContext(c).Info("Flow step rejected",
			slog.String("flow", h.binding.name), slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, h.binding.flow(p).View())
}

func (h *flowHandler[P, V]) view(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.binding.flow(p).View())
}

func (h *flowHandler[P, V]) update(c *gin.Context) {
	var patch P
	if !bindPatch(c, &patch) {
		return
	}
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	h.respond(c, p, h.binding.update(c.Request.Context(), p, patch))
}

func (h *flowHandler[P, V]) next(c *gin.Context) {
	var patch P
	if !bindPatch(c, &patch) {
		return
	}
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	h.respond(c, p, h.binding.flow(p).Next(c.Request.Context(), patch))
}

func (h *flowHandler[P, V]) back(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	h.respond(c, p, h.binding.flow(p).Back(c.Request.Context()))
}

func (h *flowHandler[P, V]) submit(c *gin.Context) {
	var patch P
	if !bindPatch(c, &patch) {
		return
	}
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	h.respond(c, p, h.binding.flow(p).Submit(c.Request.Context(), patch))
}

func (h *flowHandler[P, V]) reset(c *gin.Context) {
	p, ok := profileFor(c, h.registry)
	if !ok {
		return
	}
	h.respond(c, p, h.binding.flow(p).Reset(c.Request.Context()))
}

// registerFlowRoutes registers the wizards. Deposit and withdrawal go on
// authed, registration and password reset on public.
func registerFlowRoutes(public, authed *gin.RouterGroup, registry *portal.Registry, maxUploadBytes int64) {
	deposit := registerFlow(authed, registry, flowBinding[flows.DepositPatch, flows.DepositView]{
		name: "deposit",
		flow: func(p *portal.Profile) wizardFlow[flows.DepositPatch, flows.DepositView] { return p.Deposit },
		update: func(_ context.Context, p *portal.Profile, patch flows.DepositPatch) error {
			p.Deposit.Update(patch)
			return nil
		},
	})
	screenshots := &screenshotHandler{registry: registry, maxBytes: maxUploadBytes}
	deposit.POST("/screenshot", screenshots.attach)

	registerFlow(authed, registry, flowBinding[flows.WithdrawalPatch, flows.WithdrawalView]{
		name: "withdrawal",
		flow: func(p *portal.Profile) wizardFlow[flows.WithdrawalPatch, flows.WithdrawalView] { return p.Withdrawal },
		update: func(_ context.Context, p *portal.Profile, patch flows.WithdrawalPatch) error {
			p.Withdrawal.Update(patch)
			return nil
		},
	})

	registerFlow(public, registry, flowBinding[flows.RegistrationPatch, flows.RegistrationView]{
		name: "registration",
		flow: func(p *portal.Profile) wizardFlow[flows.RegistrationPatch, flows.RegistrationView] {
			return p.Registration
		},
		update: func(ctx context.Context, p *portal.Profile, patch flows.RegistrationPatch) error {
			return p.Registration.Update(ctx, patch)
		},
	})

	registerFlow(public, registry, flowBinding[flows.PasswordResetPatch, flows.PasswordResetView]{
		name: "password-reset",
		flow: func(p *portal.Profile) wizardFlow[flows.PasswordResetPatch, flows.PasswordResetView] {
			return p.PasswordReset
		},
		update: func(_ context.Context, p *portal.Profile, patch flows.PasswordResetPatch) error {
			p.PasswordReset.Update(patch)
			return nil
		},
	})
}
