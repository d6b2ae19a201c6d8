package models

import "errors"

// Ошибки движка корреляции. Все они восстановимы на границе вызова:
// неудачная корреляция не должна блокировать сохранение инцидента.
var (
	ErrInvalidCoordinate        = errors.New("invalid coordinate")
	ErrNotFound                 = errors.New("not found")
	ErrCorrelationFailed        = errors.New("correlation failed")
	ErrCorrelationTimeout       = errors.New("correlation timeout")
	ErrSweepTimeout             = errors.New("sweep timeout")
	ErrConcurrentUpdateConflict = errors.New("concurrent update conflict")
)
