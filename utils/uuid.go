package utils

import (
	"github.com/segmentio/ksuid"
	uuid "github.com/satori/go.uuid"
)

func KSUID() string {
	return ksuid.New().String()
}

func UUID() string {
	return uuid.NewV4().String()
}
