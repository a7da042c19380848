// Package handlers, HTTP endpoint'lerini barındırır.
//
// Thin handler prensibi: Parse → Service → Response.
// İş mantığı service katmanındadır; handler sadece HTTP çevirisi yapar.
package handlers

// contextKey, context value çakışmalarını önlemek için özel tip.
// string yerine özel tip kullanmak Go'da standart pattern'dir.
type contextKey string

// UserContextKey, AuthMiddleware'in context'e eklediği *models.User'ın anahtarı.
const UserContextKey contextKey = "user"
