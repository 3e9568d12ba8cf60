package testing

import "context"

type RedisContainer interface {
	GetURI() string
	Terminate(context.Context) error
}

type PostgresContainer interface {
	GetURI() string
	Terminate(context.Context) error
}
