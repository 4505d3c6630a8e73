package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rajputritesh1907/taskbackend/logging"
	"github.com/rajputritesh1907/taskbackend/services"
	"github.com/rajputritesh1907/taskbackend/utils"
)

type LoginHandler struct {
	Service *services.UserService
}

func NewLoginHandler(service *services.UserService) *LoginHandler {
	return &LoginHandler{Service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(user.Email, user.Role)
	if err != nil {
		logging.Logger.Errorf("Event ID: TOKEN_GENERATION_FAILED, Description: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
