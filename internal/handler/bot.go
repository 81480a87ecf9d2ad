package handler

import (
	"net/http"

	"github.com/EvgrafovDR/todolist-clone/internal/ctxkeys"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

type BotHandler struct {
	botLinkService *service.BotLinkService
}

func NewBotHandler(botLinkService *service.BotLinkService) *BotHandler {
	return &BotHandler{botLinkService: botLinkService}
}

type verifyRequest struct {
	VerificationCode string `json:"verification_code" validate:"required"`
}

// Verify redeems a verification code and binds the Telegram identity to the
// authenticated user. The response carries the identity's public fields and
// never the code.
func (h *BotHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tgUser, err := h.botLinkService.Redeem(user.ID, req.VerificationCode)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tgUser)
}
