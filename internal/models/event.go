package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EventKind names a host lifecycle signal. Names are fixed by the hosting
// environment and treated as given.
type EventKind string

const (
	EventInstall           EventKind = "install"
	EventActivate          EventKind = "activate"
	EventFetch             EventKind = "fetch"
	EventSync              EventKind = "sync"
	EventPush              EventKind = "push"
	EventNotificationClick EventKind = "notificationclick"
	EventMessage           EventKind = "message"
	EventOnline            EventKind = "online"
	EventOffline           EventKind = "offline"
)

// UnmarshalJSON validates the event kind on decode.
func (k *EventKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	switch EventKind(str) {
	case EventInstall, EventActivate, EventFetch, EventSync, EventPush,
		EventNotificationClick, EventMessage, EventOnline, EventOffline:
		*k = EventKind(str)
		return nil
	default:
		return fmt.Errorf("unknown event kind '%s'", str)
	}
}

// Event is one lifecycle signal delivered to the dispatcher.
type Event struct {
	ID   string          `json:"id,omitempty"`
	Kind EventKind       `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MessagePayload is the message-event body. A type of "SKIP_WAITING" asks the
// pending generation to activate without waiting.
type MessagePayload struct {
	Type string `json:"type"`
}

// SkipWaitingMessage is the message type that promotes a pending generation.
const SkipWaitingMessage = "SKIP_WAITING"

// SyncPayload is the sync-event body.
type SyncPayload struct {
	Tag string `json:"tag"`
}

// BackgroundSyncTag is the only sync tag this worker reacts to.
const BackgroundSyncTag = "background-sync"

// ClickPayload is the notificationclick-event body.
type ClickPayload struct {
	Action string `json:"action"`
}

// StrategyName identifies a reusable caching policy variant.
type StrategyName string

const (
	StrategyCacheFirst   StrategyName = "cache-first"
	StrategyNetworkFirst StrategyName = "network-first"
)

// UnmarshalYAML validates strategy names in route configuration.
func (s *StrategyName) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	switch str {
	case "cache-first", "network-first":
		*s = StrategyName(str)
		return nil
	default:
		return fmt.Errorf("invalid strategy '%s': must be one of 'cache-first', 'network-first'", str)
	}
}
