package notifier

import "errors"

var (
	ErrEmptyBrokerURL     = errors.New("broker url is empty")
	ErrConnectingToBroker = errors.New("error connecting to message broker")
	ErrOpeningChannel     = errors.New("error opening broker channel")
	ErrDeclaringExchange  = errors.New("error declaring exchange")
	ErrEnablingConfirms   = errors.New("error enabling publisher confirms")
	ErrMarshallingEvent   = errors.New("error marshalling event")
	ErrPublishingEvent    = errors.New("error publishing event")
	ErrEventNotConfirmed  = errors.New("event was not confirmed by broker")
)
