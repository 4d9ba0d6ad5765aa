package commands

import "coupon-service/internal/domain/coupon"

// CodeGenerator is satisfied by *coupon.Generator.
type CodeGenerator interface {
	Code(prefix string) (string, error)
	SubCode(parent coupon.Code) (string, error)
}
