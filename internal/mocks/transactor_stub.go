package mocks

import "context"

// TransactorStub 直接執行 tFunc，不開真的交易，給單元測試用
type TransactorStub struct{}

func NewTransactorStub() *TransactorStub {
	return &TransactorStub{}
}

func (TransactorStub) WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error {
	return tFunc(ctx)
}

// CodeGeneratorStub 依序回傳預先排好的驗證碼，用完後重複最後一個
type CodeGeneratorStub struct {
	Codes []string
	next  int
}

func NewCodeGeneratorStub(codes ...string) *CodeGeneratorStub {
	return &CodeGeneratorStub{Codes: codes}
}

func (g *CodeGeneratorStub) Generate() string {
	if len(g.Codes) == 0 {
		return "000000"
	}
	code := g.Codes[g.next]
	if g.next < len(g.Codes)-1 {
		g.next++
	}
	return code
}
