package contract

import "golang.org/x/xerrors"

var ErrUnderflow = xerrors.New("arithmetic underflow")
var ErrOverflow = xerrors.New("arithmetic overflow")
var ErrNoSuchEndpoint = xerrors.New("no such endpoint")
var ErrNotView = xerrors.New("endpoint is not a view")
var ErrBadArgument = xerrors.New("bad argument")
