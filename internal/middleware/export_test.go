package middleware

var RedactToken = redactToken
