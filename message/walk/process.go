// Package walk visits the parts of a parsed message.
package walk

import (
	"errors"

	"github.com/zostay/go-imapmsg/message"
)

// ErrStop may be returned by a Processor to end the walk early. AndProcess
// then returns nil.
var ErrStop = errors.New("stop walking")

// Processor is called for each part visited. Returning an error other than
// ErrStop ends the walk and AndProcess returns that error.
type Processor func(part *message.Part) error

// AndProcess calls processor for every part of the message in order,
// multipart containers included.
func AndProcess(processor Processor, m *message.Message) error {
	for _, p := range m.Structure().Parts() {
		if err := processor(p); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Leaves is AndProcess limited to the parts that carry content, skipping the
// multipart containers.
func Leaves(processor Processor, m *message.Message) error {
	return AndProcess(func(part *message.Part) error {
		if part.IsMultipart() {
			return nil
		}
		return processor(part)
	}, m)
}

// Containers is AndProcess limited to the multipart containers.
func Containers(processor Processor, m *message.Message) error {
	return AndProcess(func(part *message.Part) error {
		if !part.IsMultipart() {
			return nil
		}
		return processor(part)
	}, m)
}
