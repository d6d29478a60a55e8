// Package qrtoken генерация уникальных токенов парковочных сессий
// Токен кодируется в QR-код на стороне клиента, сервису важна только уникальность
package qrtoken

import (
	"fmt"

	"github.com/google/uuid"
)

const prefix = "PW"

// Generator генератор токенов сессий
type Generator struct{}

// NewGenerator создает новый генератор токенов
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate возвращает глобально уникальный непрозрачный токен, например "PW-1b4e28ba-2fa1-11d2-883f-0016d3cca427"
func (g *Generator) Generate() string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
