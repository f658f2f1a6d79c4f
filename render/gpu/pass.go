package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/gpu/shaders"
)

// cameraDataSize is the padded size of CameraData in particles.wgsl.
const cameraDataSize = 256

// ParticlePass draws every collected instance as a camera-facing quad.
type ParticlePass struct {
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	CameraBuf      *wgpu.Buffer
	InstanceBuffer *wgpu.Buffer
	InstanceCap    uint32
	InstanceCount  uint32
	Device         *wgpu.Device
}

func NewParticlePass(device *wgpu.Device, format wgpu.TextureFormat) (*ParticlePass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ParticleShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.ParticlesWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "ParticleCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraDataSize,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "ParticlePipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(core.ParticleInstance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					// additive over premultiplied color
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	cameraBuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ParticleCameraBuf",
		Size:  cameraDataSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ParticleCameraBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  cameraBuf,
				Size:    cameraDataSize,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &ParticlePass{
		Pipeline:  pipeline,
		BindGroup: bindGroup,
		CameraBuf: cameraBuf,
		Device:    device,
	}, nil
}

// Update writes the camera block and the instance list for this frame.
func (p *ParticlePass) Update(queue *wgpu.Queue, camera *core.Camera, instances []core.ParticleInstance) error {
	view := camera.ViewMatrix()
	buf := make([]byte, 0, cameraDataSize)
	buf = append(buf, mat4ToBytes(camera.ViewProjection())...)
	buf = append(buf, vec3ToBytesPadded(view.Row(0).Vec3())...)
	buf = append(buf, vec3ToBytesPadded(view.Row(1).Vec3())...)
	queue.WriteBuffer(p.CameraBuf, 0, buf)

	p.InstanceCount = uint32(len(instances))
	if len(instances) == 0 {
		return nil
	}

	stride := uint64(unsafe.Sizeof(core.ParticleInstance{}))
	if p.InstanceBuffer == nil || p.InstanceCap < p.InstanceCount {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
		}
		p.InstanceCap = p.InstanceCount + 1024
		b, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "ParticleInstanceBuffer",
			Size:  uint64(p.InstanceCap) * stride,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.InstanceBuffer, p.InstanceCap = nil, 0
			return err
		}
		p.InstanceBuffer = b
	}

	size := uint64(len(instances)) * stride
	queue.WriteBuffer(p.InstanceBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&instances[0])), size))
	return nil
}

func (p *ParticlePass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceBuffer == nil || p.InstanceCount == 0 {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.InstanceBuffer, 0, p.InstanceBuffer.GetSize())
	pass.Draw(6, p.InstanceCount, 0, 0)
}

func (p *ParticlePass) Release() {
	if p.InstanceBuffer != nil {
		p.InstanceBuffer.Release()
		p.InstanceBuffer = nil
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
	}
	if p.CameraBuf != nil {
		p.CameraBuf.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
