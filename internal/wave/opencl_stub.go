//go:build !opencl

package wave

import "errors"

func init() {
	Register("opencl", func(BackendOptions) (Backend, error) {
		return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
	})
}
