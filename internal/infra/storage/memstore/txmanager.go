package memstore

import "context"

// TxManager менеджер транзакций для Store: выполняет функцию без изоляции,
// поэтому конкурентные проверки могут пройти одновременно и защитой остается уникальность в Create
type TxManager struct{}

// Do выполняет fn
func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
