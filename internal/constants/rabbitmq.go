package constants

const (
	SearchEventsExchange     = "search_exchange"
	SearchEventsExchangeType = "direct"
)

// Ключи маршрутизации
const (
	RoutingKeySearchResults = "search.results.completed"
)
