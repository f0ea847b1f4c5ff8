//go:build opencl

package wave

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"ripple/internal/core"
)

// The device evaluates in single precision, so cells can differ from the CPU
// backend by one level near rounding boundaries.
const rippleKernelSource = `__kernel void ripple(
    const int width,
    const int height,
    const int ox,
    const int oy,
    const float radius,
    const float amp,
    const float phase,
    __global uchar* cells)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    float dx = (float)(idx % width - ox);
    float dy = (float)(idx / width - oy);
    float d = sqrt(dx * dx + dy * dy);
    if (!(d < radius)) {
        return;
    }
    float v = 128.0f + amp * cos(phase + d);
    if (!(v > 0.0f)) {
        v = 0.0f;
    }
    if (v > 255.0f) {
        v = 255.0f;
    }
    cells[idx] = (uchar)v;
}`

type openCLBackend struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	cells      *cl.MemObject
	size       core.Size
	deviceName string
}

func newOpenCLBackend(opts BackendOptions) (Backend, error) {
	if opts.Size.Area() <= 0 {
		return nil, errors.New("OpenCL backend needs a non-empty grid size")
	}
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}

	b := &openCLBackend{size: opts.Size, deviceName: device.Name()}
	b.context, err = cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	b.queue, err = b.context.CreateCommandQueue(device, 0)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	b.program, err = b.context.CreateProgramWithSource([]string{rippleKernelSource})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := b.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		b.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	b.kernel, err = b.program.CreateKernel("ripple")
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	b.cells, err = b.context.CreateEmptyBuffer(cl.MemReadWrite, opts.Size.Area())
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("allocating cell buffer: %w", err)
	}
	return b, nil
}

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

func (b *openCLBackend) Name() string { return "opencl" }

// Generate uploads the grid, runs the kernel over every cell, and reads the
// result back. The grid stays the source of truth on the host so callers can
// clear or inspect it between passes.
func (b *openCLBackend) Generate(grid *core.ByteGrid, originX, originY int, elapsed float64, p Params) (Stats, error) {
	radius := p.Lambda * elapsed
	stats := Stats{Radius: radius, Updated: -1}
	if grid == nil || !(radius > 0) {
		stats.Updated = 0
		return stats, nil
	}
	if grid.Size() != b.size {
		return stats, fmt.Errorf("grid is %dx%d, backend was built for %dx%d", grid.W, grid.H, b.size.W, b.size.H)
	}
	cells := grid.Cells()
	n := len(cells)
	ptr := unsafe.Pointer(&cells[0])

	if _, err := b.queue.EnqueueWriteBuffer(b.cells, false, 0, n, ptr, nil); err != nil {
		return stats, fmt.Errorf("uploading cells: %w", err)
	}
	if err := b.kernel.SetArgs(
		int32(b.size.W),
		int32(b.size.H),
		int32(originX),
		int32(originY),
		float32(math.Min(radius, math.MaxFloat32)),
		float32(127*math.Exp(-p.Beta*elapsed)),
		float32(p.Omega*elapsed),
		b.cells,
	); err != nil {
		return stats, fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := b.queue.EnqueueNDRangeKernel(b.kernel, nil, []int{n}, nil, nil); err != nil {
		return stats, fmt.Errorf("enqueueing ripple kernel: %w", err)
	}
	if _, err := b.queue.EnqueueReadBuffer(b.cells, true, 0, n, ptr, nil); err != nil {
		return stats, fmt.Errorf("reading cells: %w", err)
	}
	return stats, nil
}

// DeviceName reports the device the kernel runs on.
func (b *openCLBackend) DeviceName() string { return b.deviceName }

func (b *openCLBackend) Close() error {
	if b.cells != nil {
		b.cells.Release()
		b.cells = nil
	}
	if b.kernel != nil {
		b.kernel.Release()
		b.kernel = nil
	}
	if b.program != nil {
		b.program.Release()
		b.program = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.context != nil {
		b.context.Release()
		b.context = nil
	}
	return nil
}

func init() {
	Register("opencl", newOpenCLBackend)
}
