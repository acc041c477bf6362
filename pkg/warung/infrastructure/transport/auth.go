package transport

import "net/http"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.auth.Register(req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, userResponse{ID: user.ID.String(), Username: user.Username})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, userResponse{ID: user.ID.String(), Username: user.Username})
}
