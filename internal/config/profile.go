package config

import (
	"fmt"
	"net"
)

// Kind identifies which backing store a profile describes.
type Kind string

const (
	// KindSource is the legacy Oracle store the ETL reads from.
	KindSource Kind = "source"
	// KindDestination is the PostgreSQL store the ETL loads into.
	KindDestination Kind = "destination"
)

// Kinds lists both profile kinds in collection order.
var Kinds = []Kind{KindSource, KindDestination}

// StoreName returns the human-readable name of the store behind the kind.
func (k Kind) StoreName() string {
	switch k {
	case KindSource:
		return "Oracle"
	case KindDestination:
		return "PostgreSQL"
	default:
		return string(k)
	}
}

// Keys returns the secrets file keys used for this kind's profile fields.
func (k Kind) Keys() ProfileKeys {
	switch k {
	case KindSource:
		return ProfileKeys{
			Host:       KeyOracleHost,
			Port:       KeyOraclePort,
			Identifier: KeyOracleServiceName,
			User:       KeyOracleUser,
			Password:   KeyOraclePassword,
		}
	case KindDestination:
		return ProfileKeys{
			Host:       KeyPostgresHost,
			Port:       KeyPostgresPort,
			Identifier: KeyPostgresDatabase,
			User:       KeyPostgresUser,
			Password:   KeyPostgresPassword,
		}
	default:
		return ProfileKeys{}
	}
}

// IdentifierLabel names the identifier field the way the store calls it.
func (k Kind) IdentifierLabel() string {
	if k == KindSource {
		return "Service Name"
	}
	return "Database"
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSource, KindDestination:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown profile kind %q (expected %q or %q)", s, KindSource, KindDestination)
	}
}

// ProfileKeys maps profile fields to secrets file keys.
type ProfileKeys struct {
	Host       string
	Port       string
	Identifier string
	User       string
	Password   string
}

// ConnectionProfile holds the parameters needed to reach one backing store.
type ConnectionProfile struct {
	Kind Kind

	Host string
	Port string

	// Identifier is the Oracle service name or the PostgreSQL database name.
	Identifier string

	User     string
	Password string
}

// ProfileDefaults holds the values offered to the operator for each non-secret field.
type ProfileDefaults struct {
	Host       string
	Port       string
	Identifier string
	User       string
}

// DefaultProfile returns the documented defaults for the given kind.
func DefaultProfile(kind Kind) ProfileDefaults {
	if kind == KindSource {
		return ProfileDefaults{
			Host:       DefaultOracleHost,
			Port:       DefaultOraclePort,
			Identifier: DefaultOracleService,
			User:       DefaultOracleUser,
		}
	}
	return ProfileDefaults{
		Host:       DefaultPostgresHost,
		Port:       DefaultPostgresPort,
		Identifier: DefaultPostgresDatabase,
		User:       DefaultPostgresUser,
	}
}

// Endpoint returns host:port/identifier, used in messages and errors. It never includes credentials.
func (p *ConnectionProfile) Endpoint() string {
	return net.JoinHostPort(p.Host, p.Port) + "/" + p.Identifier
}

// PortNumber returns the numeric port. It assumes Validate has passed.
func (p *ConnectionProfile) PortNumber() int {
	n, _ := parsePort(p.Port)
	return n
}

// Values returns the profile as secrets file key/value pairs in file order.
func (p *ConnectionProfile) Values() []KeyValue {
	keys := p.Kind.Keys()
	return []KeyValue{
		{Key: keys.Host, Value: p.Host},
		{Key: keys.Port, Value: p.Port},
		{Key: keys.Identifier, Value: p.Identifier},
		{Key: keys.User, Value: p.User},
		{Key: keys.Password, Value: p.Password},
	}
}

// KeyValue is a single secrets file entry.
type KeyValue struct {
	Key   string
	Value string
}
