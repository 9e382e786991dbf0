package invoice

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator はプロセス内で一意な請求書IDを発行する
type Generator struct {
	seq atomic.Uint64
}

// NewGenerator は請求書ID発行器を作成する
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateInvoiceID は請求書IDを発行する
// UUIDに連番を添えることでプロセス内の一意性を保証する
func (g *Generator) GenerateInvoiceID() string {
	return fmt.Sprintf("INV-%d-%s", g.seq.Add(1), uuid.New().String())
}
