package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene or file
var ErrUnknownScene = errors.New("unknown scene")

const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtInScene struct {
	info   SceneInfo
	create func(cameraOverrides ...geometry.CameraConfig) *Scene
}

var builtInScenes = []builtInScene{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Matte and mirrored spheres on a large ground sphere",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "mirrors",
			Name:        "Mirrors",
			Description: "Facing mirror spheres showing deep reflection chains",
		},
		create: NewMirrorScene,
	},
	{
		info: SceneInfo{
			ID:          "spheregrid",
			Name:        "Sphere Grid",
			Description: "10x10 grid of rainbow-colored spheres with varying reflectance",
		},
		create: NewSphereGridScene,
	},
	{
		info: SceneInfo{
			ID:          "single",
			Name:        "Single Sphere",
			Description: "Unit matte sphere lit from above",
		},
		create: NewSingleSphereScene,
	},
}

// BuiltInScenes returns metadata for the scenes compiled into the binary
func BuiltInScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	for i, b := range builtInScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtInGroup
		info.Type = "builtin"
		scenes[i] = info
	}
	return scenes
}

// ListJSONScenes scans dir for *.json scene files. A missing directory yields no scenes.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseJSONMetadata(filePath)
		if err != nil {
			// Skip unreadable files rather than hiding every other scene
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseJSONMetadata reads the name, description and group of a JSON scene file
// without loading its assets
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          "json:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "JSON Scenes",
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return sceneInfo, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	if meta.Name != "" {
		sceneInfo.Name = meta.Name
		sceneInfo.DisplayName = meta.Name
	}
	if meta.Group != "" {
		sceneInfo.Group = meta.Group
	}
	sceneInfo.Description = meta.Description

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and JSON scenes, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %w", err)
	}

	allScenes := append(BuiltInScenes(), jsonScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Create builds a scene by name. Accepted forms are a built-in ID, "json:<name>"
// resolved inside dir, or a path to a .json file.
func Create(name, dir string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	for _, b := range builtInScenes {
		if b.info.ID == name {
			return b.create(cameraOverrides...), nil
		}
	}

	if jsonName, ok := strings.CutPrefix(name, "json:"); ok {
		return NewJSONScene(filepath.Join(dir, jsonName+".json"), cameraOverrides...)
	}

	if strings.HasSuffix(name, ".json") {
		return NewJSONScene(name, cameraOverrides...)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-room" -> "Mirror Room"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
