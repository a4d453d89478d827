// terrain.go

package procgen

// generateTerrain 按区域类型返回固定的视差背景层组合
func generateTerrain(zoneType ZoneType) Terrain {
	var layers []TerrainLayer

	switch zoneType {
	case ZoneClouds:
		layers = []TerrainLayer{
			{TextureName: "cloud_layer_1", ScrollSpeed: 15.0, ParallaxFactor: 0.3},
			{TextureName: "cloud_layer_2", ScrollSpeed: 30.0, ParallaxFactor: 0.6},
		}
	case ZoneOcean:
		layers = []TerrainLayer{
			{TextureName: "ocean_bg", ScrollSpeed: 12.0, ParallaxFactor: 0.25},
			{TextureName: "waves", ScrollSpeed: 35.0, ParallaxFactor: 0.7},
		}
	case ZoneMountains:
		layers = []TerrainLayer{
			{TextureName: "mountain_far", ScrollSpeed: 8.0, ParallaxFactor: 0.15},
			{TextureName: "mountain_near", ScrollSpeed: 25.0, ParallaxFactor: 0.5},
		}
	case ZoneDesert:
		layers = []TerrainLayer{
			{TextureName: "desert_bg", ScrollSpeed: 10.0, ParallaxFactor: 0.2},
			{TextureName: "sand_dunes", ScrollSpeed: 28.0, ParallaxFactor: 0.6},
		}
	default:
		layers = []TerrainLayer{
			{TextureName: "sky_bg", ScrollSpeed: 10.0, ParallaxFactor: 0.2},
			{TextureName: "clouds_far", ScrollSpeed: 20.0, ParallaxFactor: 0.5},
		}
	}

	return Terrain{BackgroundLayers: layers}
}
