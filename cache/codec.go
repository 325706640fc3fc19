package cache

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-user-records/users"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec names accepted in Config.Codec.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Codec turns a user record into cache bytes and back.
type Codec interface {
	Name() string
	Marshal(u *users.User) ([]byte, error)
	Unmarshal(data []byte, u *users.User) error
}

// CodecByName returns the codec registered under name. An empty name selects JSON.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", CodecJSON:
		return jsonCodec{}, nil
	case CodecMsgpack:
		return msgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecJSON }

func (jsonCodec) Marshal(u *users.User) ([]byte, error) { return json.Marshal(u) }

func (jsonCodec) Unmarshal(data []byte, u *users.User) error { return json.Unmarshal(data, u) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return CodecMsgpack }

func (msgpackCodec) Marshal(u *users.User) ([]byte, error) { return msgpack.Marshal(u) }

func (msgpackCodec) Unmarshal(data []byte, u *users.User) error { return msgpack.Unmarshal(data, u) }
