package server

// Server объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей.
type Server struct {
	PredictionServer
	SystemServer
}

func NewServer(
	predictionServer PredictionServer,
	systemServer SystemServer,
) Server {
	return Server{
		PredictionServer: predictionServer,
		SystemServer:     systemServer,
	}
}
