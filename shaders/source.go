package shaders

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoVertexShader   = errors.New("no vertex shader found. Put '//shader:vertex' or '#type vertex' before your vertex shader")
	ErrNoFragmentShader = errors.New("no fragment shader found. Put '//shader:fragment' or '#type fragment' before your fragment shader")
)

// StageSource is the source of one stage taken out of a combined shader file
type StageSource struct {
	Type ShaderType
	Src  []byte
}

// SplitCombinedSource splits one file holding several shader stages.
//
// A stage starts at a line beginning with '//shader:<type>' or '#type <type>', where type is
// vertex, fragment (or pixel) or geometry. Lines before the first marker are ignored.
// Every stage must be unique, and a vertex and a fragment stage are required.
func SplitCombinedSource(combined []byte) ([]StageSource, error) {

	stages := make([]StageSource, 0, 3)
	current := -1

	scanner := bufio.NewScanner(bytes.NewReader(combined))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {

		lineNum++
		line := scanner.Text()

		if typeName, isMarker := stageMarker(line); isMarker {

			shdrType := parseShaderType(typeName)
			if shdrType == ShaderType_Unknown {
				return nil, fmt.Errorf("unknown shader type '%s' on line %d. Must be vertex, fragment or geometry", strings.TrimSpace(typeName), lineNum)
			}

			for i := 0; i < len(stages); i++ {
				if stages[i].Type == shdrType {
					return nil, fmt.Errorf("shader type '%s' appears more than once (second time on line %d)", shdrType, lineNum)
				}
			}

			stages = append(stages, StageSource{Type: shdrType})
			current = len(stages) - 1
			continue
		}

		if current == -1 {
			continue
		}

		stages[current].Src = append(stages[current].Src, line...)
		stages[current].Src = append(stages[current].Src, '\n')
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read combined shader: %w", err)
	}

	hasVert, hasFrag := false, false
	for i := 0; i < len(stages); i++ {
		hasVert = hasVert || stages[i].Type == ShaderType_Vertex
		hasFrag = hasFrag || stages[i].Type == ShaderType_Fragment
	}

	if !hasVert {
		return nil, ErrNoVertexShader
	}

	if !hasFrag {
		return nil, ErrNoFragmentShader
	}

	return stages, nil
}

// stageMarker returns the type name following a stage marker at the start of line
func stageMarker(line string) (string, bool) {

	trimmed := strings.TrimLeft(line, " \t")

	if rest, ok := strings.CutPrefix(trimmed, "//shader:"); ok {
		return rest, true
	}

	if rest, ok := strings.CutPrefix(trimmed, "#type"); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
		return rest, true
	}

	return "", false
}
