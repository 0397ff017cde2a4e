package audio

import (
	"bytes"
	"text/template"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

var deviceTmpl = template.Must(template.New("").Parse(
	`{{. | len}} host APIs: {{range .}}
	Name:                   {{.Name}}
	{{if .DefaultInputDevice}}Default input device:   {{.DefaultInputDevice.Name}}{{end}}
	{{if .DefaultOutputDevice}}Default output device:  {{.DefaultOutputDevice.Name}}{{end}}
	Devices: {{range .Devices}}
		Name:                      {{.Name}}
		MaxInputChannels:          {{.MaxInputChannels}}
		MaxOutputChannels:         {{.MaxOutputChannels}}
		DefaultLowInputLatency:    {{.DefaultLowInputLatency}}
		DefaultLowOutputLatency:   {{.DefaultLowOutputLatency}}
		DefaultSampleRate:         {{.DefaultSampleRate}}
	{{end}}
{{end}}`,
))

// FitsRouter reports whether a device can carry an NxN router: N inputs plus
// N main and N foldback outputs.
func FitsRouter(d *portaudio.DeviceInfo, n int) bool {
	return d.MaxInputChannels >= n && d.MaxOutputChannels >= 2*n
}

// PrintDevices logs host APIs and their devices, and warns when the default
// devices cannot carry an NxN router.
func PrintDevices(n int) error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	hs, err := portaudio.HostApis()
	if err != nil {
		return err
	}
	buf := bytes.NewBuffer([]byte{})
	if err := deviceTmpl.Execute(buf, hs); err != nil {
		return err
	}
	glog.Info(buf.String())

	for _, h := range hs {
		for _, d := range h.Devices {
			if FitsRouter(d, n) {
				glog.Infof("%s: %q fits a %dx%d router", h.Name, d.Name, n, n)
			}
		}
	}

	in, err := portaudio.DefaultInputDevice()
	if err != nil {
		return err
	}
	out, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return err
	}
	if in.MaxInputChannels < n || out.MaxOutputChannels < 2*n {
		glog.Warningf("default devices %q/%q have %d in/%d out, router needs %d/%d",
			in.Name, out.Name, in.MaxInputChannels, out.MaxOutputChannels, n, 2*n)
	}
	return nil
}
