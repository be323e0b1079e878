package config

import "time"

type UrbanAPI struct {
	Host             string        `env:"URBAN_API_HOST,notEmpty"`
	PingTimeout      time.Duration `env:"URBAN_API_PING_TIMEOUT" envDefault:"2s"`
	OperationTimeout time.Duration `env:"URBAN_API_OPERATION_TIMEOUT" envDefault:"120s"`
}
