package mocks

import "github.com/stretchr/testify/mock"

type IdentifierGenerator struct {
	mock.Mock
}

func (g *IdentifierGenerator) Generate(userID string) string {
	args := g.Called(userID)
	return args.String(0)
}
