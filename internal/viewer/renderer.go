// Package viewer draws the simulation as colored lines with OpenGL 4.1 core,
// either to the default framebuffer or to an offscreen Framebuffer.
package viewer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cydsim/internal/logger"
	"github.com/Faultbox/cydsim/internal/viewer/scene"
	"github.com/Faultbox/cydsim/pkg/math"
)

// Renderer draws interleaved position/color line lists.
// Must be created after the OpenGL context.
type Renderer struct {
	width, height int

	program uint32
	mvpLoc  int32

	vao      uint32
	vbo      uint32
	capacity int // floats the VBO can hold
}

// NewRenderer initializes OpenGL and the line pipeline.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.DepthFunc(gl.LESS)

	var err error
	r.program, err = compileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.mvpLoc = gl.GetUniformLocation(r.program, gl.Str("uMVP\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(scene.FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("line pipeline created",
		zap.Uint32("program", r.program),
		zap.Uint32("vao", r.vao),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// Begin clears the bound target. The depth test and clear color are set
// again because an ImGui pass may have changed them.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawLines uploads and draws one line list with the given view-projection.
func (r *Renderer) DrawLines(lines *scene.Lines, viewProj math.Mat4) {
	n := len(lines.Data)
	if n == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, viewProj.Ptr())

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if n > r.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, n*4, gl.Ptr(lines.Data), gl.DYNAMIC_DRAW)
		r.capacity = n
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*4, gl.Ptr(lines.Data))
	}
	gl.DrawArrays(gl.LINES, 0, int32(lines.Count()))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
