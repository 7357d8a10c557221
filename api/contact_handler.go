package api

import (
	"encoding/json"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// contactHandler forwards contact-form submissions to the site owner.
// Submissions are never persisted.
type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	mailer    *services.Mailer
}

func newContactHandler(mailer *services.Mailer) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		mailer:    mailer,
	}
}

// ContactRequest is a contact-form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// submit handles a contact-form submission
// @Summary Submit contact form
// @Description Validates the submission and forwards it to the site owner by email. Nothing is stored.
// @Tags Contact
// @Accept json
// @Produce json
// @Param contact body ContactRequest true "Contact form fields"
// @Success 200 {object} StatusResponse "Message received"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid form data"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Delivery failed"
// @Router /contact [post]
func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("contact", "please correct the form and try again"))
			return
		}

		if h.mailer != nil {
			if err := h.mailer.SendContactMessage(r.Context(), req.Name, req.Email, req.Subject, req.Message); err != nil {
				h.logger.Error().Err(err).Msg("Failed to forward contact message")
				h.responder.WriteError(w, errs.NewBadGatewayError("could not deliver your message, please try again later", err))
				return
			}
		} else {
			// No mailer configured (local dev): acknowledge without delivery
			h.logger.Warn().Str("from", req.Email).Msg("Contact message received but no mailer is configured")
		}

		h.responder.WriteStatus(w, http.StatusOK, "Message received. A response will be sent if required.")
	}
}
