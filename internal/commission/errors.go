package commission

import "errors"

var ErrInvalidCommission = errors.New("invalid_commission")
