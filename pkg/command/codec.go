package command

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

var (
	ErrEncodeOptions = errors.New("error while encoding options")
	ErrCustomID      = errors.New("malformed component custom id")
)

// Discord rejects component custom ids longer than this.
const maxCustomIDLength = 100

const nonceLength = 4

type encoder struct {
	Writer io.Writer
}

func (e *encoder) encode(value reflect.Value) error {
	switch value.Kind() {
	case reflect.Int:
		err := binary.Write(e.Writer, binary.BigEndian, int32(value.Int()))
		if err != nil {
			return fmt.Errorf("failed to write int value: %w", err)
		}
	case reflect.Bool:
		err := binary.Write(e.Writer, binary.BigEndian, value.Bool())
		if err != nil {
			return fmt.Errorf("failed to write boolean value: %w", err)
		}
	case reflect.String:
		b := []byte(value.String())
		if len(b) > 0xff {
			return fmt.Errorf("string of length %d is too long: %w", len(b), ErrEncodeOptions)
		}
		err := binary.Write(e.Writer, binary.BigEndian, uint8(len(b)))
		if err != nil {
			return fmt.Errorf("failed to write length for string value: %w", err)
		}

		_, err = e.Writer.Write(b)
		if err != nil {
			return fmt.Errorf("failed to write string value: %w", err)
		}
	case reflect.Pointer:
		err := binary.Write(e.Writer, binary.BigEndian, !value.IsNil())
		if err != nil {
			return fmt.Errorf("failed to write nil marker for pointer: %w", err)
		}
		if value.IsNil() {
			return nil
		}

		err = e.encode(value.Elem())
		if err != nil {
			return fmt.Errorf("error while encoding element for pointer: %w", err)
		}
	case reflect.Struct:
		for i := 0; i < value.NumField(); i++ {
			err := e.encode(value.Field(i))
			if err != nil {
				return fmt.Errorf("error while encoding field %q: %w", value.Type().Field(i).Name, err)
			}
		}
	default:
		return fmt.Errorf("unsupported kind %s in options: %w", value.Kind(), ErrEncodeOptions)
	}

	return nil
}

func marshal(structure any) ([]byte, error) {
	var buf bytes.Buffer
	enc := encoder{&buf}
	err := enc.encode(reflect.ValueOf(structure))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal structure: %w", err)
	}

	return buf.Bytes(), nil
}

type decoder struct {
	Reader io.Reader
}

func (d *decoder) decodeValue(value reflect.Value) error {
	if !value.CanSet() {
		return fmt.Errorf("cannot set fields for value of type %q: %w", value.Type().String(), ErrDecodeOption)
	}

	switch value.Kind() {
	case reflect.Int:
		var v int32
		err := binary.Read(d.Reader, binary.BigEndian, &v)
		if err != nil {
			return fmt.Errorf("failed to read int value: %w", err)
		}

		value.SetInt(int64(v))
	case reflect.Bool:
		var v bool
		err := binary.Read(d.Reader, binary.BigEndian, &v)
		if err != nil {
			return fmt.Errorf("failed to read boolean value: %w", err)
		}

		value.SetBool(v)
	case reflect.String:
		var l uint8
		err := binary.Read(d.Reader, binary.BigEndian, &l)
		if err != nil {
			return fmt.Errorf("failed to read length for string value: %w", err)
		}

		buf := make([]byte, l)
		_, err = io.ReadFull(d.Reader, buf)
		if err != nil {
			return fmt.Errorf("failed to read string value: %w", err)
		}

		value.SetString(string(buf))
	case reflect.Pointer:
		var present bool
		err := binary.Read(d.Reader, binary.BigEndian, &present)
		if err != nil {
			return fmt.Errorf("failed to check if pointer is nil: %w", err)
		}

		if !present {
			value.Set(reflect.Zero(value.Type()))
			return nil
		}

		ptr := reflect.New(value.Type().Elem())
		err = d.decodeValue(ptr.Elem())
		if err != nil {
			return fmt.Errorf("error while decoding pointer element: %w", err)
		}
		value.Set(ptr)
	case reflect.Struct:
		for i := 0; i < value.NumField(); i++ {
			err := d.decodeValue(value.Field(i))
			if err != nil {
				return fmt.Errorf("error while decoding field %q: %w", value.Type().Field(i).Name, err)
			}
		}
	default:
		return fmt.Errorf("unsupported kind %s in options: %w", value.Kind(), ErrDecodeOption)
	}

	return nil
}

func unmarshal[T any](reader io.Reader) (*T, error) {
	var structure T
	dec := decoder{Reader: reader}
	err := dec.decodeValue(reflect.ValueOf(&structure).Elem())
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return &structure, nil
}

// customID packs the target command, the action tag and the action state into a
// component custom id. A random nonce keeps ids unique within one message.
func customID(a action, cmdName string) (string, error) {
	cmdData, err := marshal(cmdName)
	if err != nil {
		return "", fmt.Errorf("failed to marshal command name: %w", err)
	}

	actionData, err := marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to marshal button data: %w", err)
	}

	var nonce [nonceLength]byte
	_, err = rand.Read(nonce[:])
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	raw := make([]byte, 0, len(cmdData)+1+len(actionData)+nonceLength)
	raw = append(raw, cmdData...)
	raw = append(raw, a.Name())
	raw = append(raw, actionData...)
	raw = append(raw, nonce[:]...)

	id := base64.RawURLEncoding.EncodeToString(raw)
	if len(id) > maxCustomIDLength {
		return "", fmt.Errorf("custom id of length %d exceeds %d: %w", len(id), maxCustomIDLength, ErrEncodeOptions)
	}

	return id, nil
}

// ParseCustomID returns the command a component belongs to and a reader positioned at its action.
func ParseCustomID(id string) (string, io.Reader, error) {
	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return "", nil, fmt.Errorf("could not decode custom id: %w", errors.Join(ErrCustomID, err))
	}

	reader := bytes.NewReader(raw)
	name, err := unmarshal[string](reader)
	if err != nil {
		return "", nil, fmt.Errorf("could not read command name: %w", errors.Join(ErrCustomID, err))
	}
	if strings.TrimSpace(*name) == "" {
		return "", nil, fmt.Errorf("empty command name: %w", ErrCustomID)
	}

	return *name, reader, nil
}
