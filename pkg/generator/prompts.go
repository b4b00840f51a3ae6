package generator

import "github.com/shouni/chroma-weaver/pkg/domain"

// 各モードの指示文。ユーザーは編集できない固定文言です。
const (
	fusePrompt = `As a High-Fashion AI Designer and Photographer, generate a new, unique high-fashion model and seamlessly integrate them into the 'Background Image (Room)'.

1.  **New Model:** Create a distinct model; do not replicate the 'Model Style Donor (Vibe)' individual.
2.  **Harmonized Style:** Extract the fashion aesthetic from the 'Model Style Donor' (clothing, fabrics, hair, vibe). Adapt and harmonize this style with the 'Background Image's' theme, color palette, and atmosphere, creating a cohesive new outfit and look.
3.  **Dynamic Pose:** Place the new model in a fresh, elegant pose that interacts naturally with the 'Background Image'.
4.  **Photorealistic Integration:** Ensure perfect matching of scale, perspective, lighting, and shadows with the 'Background Image' for a single, high-quality editorial shot.
5.  **Unique Output:** Strive for a unique vibe, theme, and distinct visual outcome with each generation, avoiding repetition.`

	extendPrompt = `As an Interior Architect and Conceptual Designer, analyze the 'Vibe Donor' image to extract its key aesthetics: soft pink/peach walls, striped rainbow light, glossy marble floor, and neon archways.

Generate a **completely new interior scene** from a **radically different camera angle/point of view**. The new scene must feature:

1.  **Unique Architecture:** Design new, distinct interior corners and architectural elements; do not replicate the 'Vibe Donor's' layout.
2.  **Novel Elements:** Introduce new, thematically consistent props, furniture, and design elements that align with the 'Vibe Donor's' high-fashion aesthetic.
3.  **Vibe Continuity:** Incorporate the 'Vibe Donor's' extracted elements (wall color, light reflections, floor texture, archways) seamlessly to create a consistent, sophisticated, yet fresh scene.

The final output should be a captivating, high-fashion architectural render.`

	remixPrompt = `As a High-Fashion Stylist and AI Visual Mixer, generate a *new and unique* image featuring an *entirely distinct model* within the 'Target Scene' background. Avoid direct copies of the 'Style Donor'.

1.  **New Model:** Create a brand new model; do not replicate the 'Style Donor' individual.
2.  **Style Inspiration:** Analyze 'Style Donor' for distinctive fashion elements (outfit design, hair, accessories). Use this as *inspiration* to design a **new, high-fashion outfit and look** for the generated model, evoking the 'Style Donor's' spirit and complexity (e.g., elaborate details) but as a fresh interpretation.
3.  **New Pose & Integration:** Place the unique model in a casual, natural pose within the 'Target Scene'. Ensure perfect integration of scale, lighting, and shadows, as if originally photographed there.
4.  **Dynamic Color Remix:** Dynamically remix the generated model's clothing and accessory colors to *exclusively match the primary, vibrant colors* of the 'Target Scene's' rainbow yarn couch. Ensure a natural, high-fashion color transformation.
5.  **Visual Uniqueness:** Strive for novel compositions and distinct visual outcomes in each generation, avoiding repetitive imagery.

The final output must be a single, cohesive high-fashion editorial image, merging new creativity with guided inspiration.`
)

// Instruction はモードに対応する指示文を返します。
func Instruction(mode domain.Mode) (string, bool) {
	switch mode {
	case domain.ModeFuse:
		return fusePrompt, true
	case domain.ModeExtend:
		return extendPrompt, true
	case domain.ModeRemix:
		return remixPrompt, true
	default:
		return "", false
	}
}
