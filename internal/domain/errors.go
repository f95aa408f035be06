package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El motor de consistencia nunca expone errores crudos del storage: todo lo
// que no sea uno de estos sentinelas se envuelve como error de almacenamiento.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidState       = errors.New("la solicitud ya fue procesada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCapacityExceeded   = errors.New("capacidad de la ubicación excedida")
)
