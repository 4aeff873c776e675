package mocks

import (
	"github.com/stretchr/testify/mock"

	"readiness/internal/domain"
	"readiness/internal/port"
)

// MockFileDecoder is a mock implementation of port.FileDecoder.
type MockFileDecoder struct {
	mock.Mock
}

func (m *MockFileDecoder) Decode(fileType domain.FileType, data []byte) (*port.DecodedFile, error) {
	args := m.Called(fileType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DecodedFile), args.Error(1)
}
