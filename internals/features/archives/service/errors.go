package service

import (
	"errors"
	"fmt"
)

type Operation string

const (
	OpRotateDate    Operation = "rotate_date"
	OpRotateAll     Operation = "rotate_all"
	OpRotateCold    Operation = "rotate_cold"
	OpExportHistory Operation = "export_history"
)

// lockKey groups operations that read and delete the same tier.
func (o Operation) lockKey() string {
	switch o {
	case OpRotateCold, OpExportHistory:
		return "archive:history"
	default:
		return "archive:active"
	}
}

var (
	ErrOperationInProgress  = errors.New("outra operação de arquivamento já está em andamento")
	ErrNoIDs                = errors.New("nenhum id informado")
	ErrStorageNotConfigured = errors.New("armazenamento de backup não configurado")
	ErrRowsChanged          = errors.New("agendamentos alterados durante o arquivamento")
)

// OperationError is an ordinary failure: nothing was deleted and the
// operation can be retried from scratch.
type OperationError struct {
	Op    Operation
	Stage string
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed at %s: %v", e.Op, e.Stage, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// PartialFailureError means the copy succeeded and the delete did not.
// Rows now exist in both places; no data is lost.
type PartialFailureError struct {
	Op       Operation
	Copied   int
	Location string // destination table or backup object key
	Err      error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %d rows copied to %s but not removed from source: %v", e.Op, e.Copied, e.Location, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// Message is the operator-facing summary.
func (e *PartialFailureError) Message() string {
	if e.Op == OpExportHistory {
		return fmt.Sprintf("Backup de %d registro(s) enviado para %s, mas a limpeza do histórico falhou.", e.Copied, e.Location)
	}
	return fmt.Sprintf("%d agendamento(s) copiado(s) para o histórico, mas NÃO removido(s) dos agendamentos ativos.", e.Copied)
}

// RecoveryHint tells the operator how to finish the job.
func (e *PartialFailureError) RecoveryHint() string {
	if e.Op == OpExportHistory {
		return "Os dados estão preservados no arquivo de backup. Confira o arquivo e repita a exportação para concluir a limpeza."
	}
	if errors.Is(e.Err, ErrRowsChanged) {
		return "Agendamentos tiveram a data alterada durante a operação e ficaram também no histórico. Remova essas cópias do histórico ou arquive-os pela nova data."
	}
	return "Confira o histórico e repita a mesma operação: a cópia ignora registros já copiados e a remoção será refeita."
}
