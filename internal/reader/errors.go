package reader

import "github.com/joshuapare/classkit/pkg/types"

func wrapIOErr(err error) error {
	return &types.Error{Kind: types.ErrKindIO, Msg: err.Error(), Offset: -1, Slot: -1, Err: err}
}
