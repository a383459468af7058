package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores de configuración fiscal: bloquean la operación por completo.
// Calcular nómina con UVT o SMMLV en cero produce cifras fiscalmente incorrectas.
var (
	ErrUVTNotConfigured   = errors.New("valor UVT no configurado en la empresa")
	ErrSMMLVNotConfigured = errors.New("salario mínimo (SMMLV) no configurado en la empresa")
	ErrResolutionRequired = errors.New("no hay resolución de numeración activa para el documento")
	ErrPayrollDisabled    = errors.New("nómina electrónica deshabilitada para la empresa")
)

// Errores del ciclo de vida del documento de nómina.
var (
	ErrDocumentAccepted    = errors.New("el documento ya fue aceptado por la DIAN")
	ErrDocumentNotFinished = errors.New("el documento debe estar en estado done para enviarse")
	ErrDocumentNotDraft    = errors.New("la operación solo es válida en estado draft")
)
