package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/services"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) UserLogin(w http.ResponseWriter, r *http.Request) {
	f, err := requiredForm(r, "nickname", "password")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.users.Login(r.Context(), f["nickname"], r.FormValue("password"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	f, err := requiredForm(r, "nickname", "password")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.admins.Login(r.Context(), f["nickname"], r.FormValue("password"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func namesFromForm(r *http.Request) (services.Names, error) {
	f, err := requiredForm(r, "nombre", "apellido_paterno")
	if err != nil {
		return services.Names{}, err
	}
	return services.Names{
		Nombre:          f["nombre"],
		ApellidoPaterno: f["apellido_paterno"],
		ApellidoMaterno: r.FormValue("apellido_materno"),
	}, nil
}

func (h *Handler) CreateFirstAdmin(w http.ResponseWriter, r *http.Request) {
	names, err := namesFromForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.admins.CreateFirstAdmin(r.Context(), names)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	f, err := requiredForm(r, "admin_nickname", "admin_password", "nombre", "apellido_paterno", "rol")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	in := models.NewUser{
		Nombre:          f["nombre"],
		ApellidoPaterno: f["apellido_paterno"],
		ApellidoMaterno: r.FormValue("apellido_materno"),
		Nickname:        r.FormValue("nickname"),
		Password:        r.FormValue("password"),
		Email:           r.FormValue("email"),
		Telefono:        r.FormValue("telefono"),
		Empresa:         r.FormValue("empresa"),
		Rol:             models.Role(f["rol"]),
	}
	out, err := h.admins.CreateUser(r.Context(), f["admin_nickname"], r.FormValue("admin_password"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handler) GenerateCredentials(w http.ResponseWriter, r *http.Request) {
	names, err := namesFromForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	creds, err := h.admins.GenerateCredentials(r.Context(), caller(r), names)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, creds)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.NewUser
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.users.Create(r.Context(), caller(r), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	f, err := requiredForm(r, "nickname", "current_password", "new_password")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	err = h.users.ChangePassword(r.Context(), caller(r), f["nickname"], r.FormValue("current_password"), r.FormValue("new_password"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "password updated"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	f, err := requiredForm(r, "nickname")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	creds, err := h.users.ResetPassword(r.Context(), caller(r), f["nickname"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, creds)
}

func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	f, err := requiredForm(r, "nickname", "current_password")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.users.UpdateContact(r.Context(), caller(r), f["nickname"], r.FormValue("current_password"),
		r.FormValue("email"), r.FormValue("telefono"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intQuery(r, "limit")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	criteria := models.UserSearch{
		Nickname: q.Get("nickname"),
		Email:    q.Get("email"),
		Nombre:   q.Get("nombre"),
		Empresa:  q.Get("empresa"),
		Rol:      models.Role(q.Get("rol")),
	}
	found, err := h.users.Search(r.Context(), caller(r), criteria, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var upd models.UserUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.users.Update(r.Context(), caller(r), chi.URLParam(r, "nickname"), upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), caller(r), chi.URLParam(r, "nickname")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "user deleted"})
}
