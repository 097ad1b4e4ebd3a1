package core

import (
	"bytes"
	"text/template"
)

// RenderTemplate renders a user-supplied skeleton instead of the fixed
// one. The skeleton is a text/template body evaluated against the
// JobConfig, e.g.
//
//	#!/bin/bash
//	#SBATCH  --job-name={{.JobName}}
//	#SBATCH  --time={{.WallTime}}
//	{{if .Partition}}#SBATCH  --partition={{.Partition}}{{end}}
//	source load_compass_env.sh
//	compass run {{.Suite}}
//
// Required-field checks still apply; skeleton problems come back as a
// TemplateError.
func RenderTemplate(cfg JobConfig, skeleton string) (string, error) {
	if err := cfg.checkRequired(); err != nil {
		return "", err
	}
	tmpl, err := template.New("jobscript").Option("missingkey=error").Parse(skeleton)
	if err != nil {
		return "", &TemplateError{Err: err}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", &TemplateError{Err: err}
	}
	return buf.String(), nil
}
