package logger

import (
	"time"

	"go.uber.org/zap"
)

// HTTP

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Domain

func OwnerID(v string) zap.Field  { return zap.String("owner_id", v) }
func Subject(v string) zap.Field  { return zap.String("subject", v) }
func Resource(v string) zap.Field { return zap.String("resource", v) }
func ID(v string) zap.Field       { return zap.String("id", v) }
func Tribunal(v string) zap.Field { return zap.String("tribunal", v) }

func Err(err error) zap.Field { return zap.Error(err) }
