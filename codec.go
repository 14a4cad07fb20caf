package qtoken

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ContentType is the media type of every payload exchanged with a remote backend.
const ContentType = "application/msgpack"

// RunRequest asks a backend to execute a program for a number of shots.
type RunRequest struct {
	Program *Program `msgpack:"program"`
	Shots   int      `msgpack:"shots"`
}

func EncodeProgram(p *Program) ([]byte, error) {
	return encode(p)
}

func DecodeProgram(data []byte) (*Program, error) {
	p := &Program{}
	if err := decode(data, p); err != nil {
		return nil, err
	}

	return p, nil
}

func EncodeRunRequest(req *RunRequest) ([]byte, error) {
	return encode(req)
}

func DecodeRunRequest(data []byte) (*RunRequest, error) {
	req := &RunRequest{}
	if err := decode(data, req); err != nil {
		return nil, err
	}

	return req, nil
}

func EncodeResult(result *Result) ([]byte, error) {
	return encode(result)
}

func DecodeResult(data []byte) (*Result, error) {
	result := &Result{}
	if err := decode(data, result); err != nil {
		return nil, err
	}

	return result, nil
}

func encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}

	return data, nil
}

func decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}

	return nil
}
