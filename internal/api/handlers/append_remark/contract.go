package append_remark

import (
	"context"

	uc "github.com/m04kA/Trek-AdmissionService/internal/usecase/append_remark"
)

type AppendRemarkUseCase interface {
	Execute(ctx context.Context, req *uc.Request) (*uc.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
