package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var start = time.Now()

// glfwNow maps the glfw timer onto wall time for the frame clock.
func glfwNow() time.Time {
	return start.Add(time.Duration(glfw.GetTime() * float64(time.Second)))
}
