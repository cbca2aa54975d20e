// Package smtp реализует отправку писем через SMTP с поддержкой STARTTLS.
package smtp

import "io"

// TransportInterface устанавливает соединение с SMTP-сервером и
// сообщает адрес отправителя.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}

// Client покрывает часть методов *smtp.Client, необходимую для
// отправки одного письма.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
