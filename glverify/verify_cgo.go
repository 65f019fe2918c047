//go:build !tinygo && cgo

// Package glverify smoke-tests generated shader source against a real
// OpenGL driver. It is an optional layer: builds without cgo get stubs
// that report GL as unavailable.
package glverify

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"

	"github.com/gxkit/texconv"
)

// vertexPassthrough feeds the encoding fragment shaders: it forwards the
// quad position as the uv0 destination coordinate they declare.
const vertexPassthrough = `#version 330
in vec2 aPos;
out vec2 uv0;
void main() {
    uv0 = aPos;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

// Init1x1GLFW opens a hidden 1x1 GL window so shader compilation can run
// without a visible surface. Call the returned terminate function when
// done. Must be called from the main OS thread.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "texconv verify",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// ContextInfo returns the driver's renderer and version strings. Requires
// a current GL context.
func ContextInfo() string {
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	return renderer + ", OpenGL " + version
}

// CompileCheck links fragSrc against the passthrough vertex stage on the
// current GL context. The returned error carries the driver's compile log.
func CompileCheck(fragSrc []byte) error {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexPassthrough,
		Fragment: string(fragSrc) + "\x00",
	})
	if err != nil {
		return err
	}
	prog.Delete()
	return nil
}

// VerifyAll generates the OpenGL variant of every supported format with
// enc and compiles each on the current GL context. All failures are
// collected; a nil return means the driver accepted every variant.
func VerifyAll(enc *texconv.Encoder, log *slog.Logger) error {
	if log == nil {
		log = texconv.DefaultLogger()
	}
	log.Info("verifying encoding shaders", "driver", ContextInfo())
	var errs []error
	for _, format := range texconv.SupportedFormats() {
		src, err := enc.GenerateEncodingShader(format, texconv.APIOpenGL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", format, err))
			continue
		}
		if err := CompileCheck(src); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", format, err))
			log.Error("encoding shader rejected by driver", "format", format.String(), "err", err)
		}
	}
	return errors.Join(errs...)
}
