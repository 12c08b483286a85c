// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// Используется bcrypt с фиксированной стоимостью: единый cost сохраняет
// равномерные временные характеристики проверки.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash принимает пароль пользователя и возвращает его bcrypt-хэш.
// Соль генерируется на каждый вызов внутри bcrypt.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// Verify сравнивает bcrypt-хэш с введённым паролем.
// Несовпадение — не ошибка, возвращается false.
func Verify(originalHash, externalPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)) == nil
}
