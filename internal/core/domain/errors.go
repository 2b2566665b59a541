package domain

import "errors"

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTituloRequired      = errors.New("titulo is required")
	ErrResponsavelRequired = errors.New("responsavel is required")
	ErrUsuarioRequired     = errors.New("usuario is required")
)
