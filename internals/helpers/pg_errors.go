package helper

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapDBError translates a store error into an HTTP status and a user-facing message.
func MapDBError(err error, notFoundMsg string) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFoundMsg == "" {
			notFoundMsg = "Registro não encontrado"
		}
		return http.StatusNotFound, notFoundMsg
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return http.StatusConflict, "Registro duplicado"
		case "23503":
			return http.StatusBadRequest, "Referência inexistente"
		case "23502":
			return http.StatusBadRequest, "Campo obrigatório ausente"
		case "22P02":
			return http.StatusBadRequest, "Valor em formato inválido"
		}
	}
	return http.StatusInternalServerError, err.Error()
}
