package driver

const (
	// Graph-level metadata, one :SceneGraph node per assessment group.
	SaveGraphMetaQuery = `
		MERGE (g:SceneGraph {group_id: $group_id})
		SET g.uuid = $uuid,
			g.image_count = $image_count,
			g.detection_count = $detection_count,
			g.created_at = $created_at
		RETURN g.uuid AS uuid
	`

	GetGraphMetaQuery = `
		MATCH (g:SceneGraph {group_id: $group_id})
		RETURN g.uuid AS uuid, g.image_count AS image_count,
			g.detection_count AS detection_count, g.created_at AS created_at
	`

	// Scene nodes are keyed by (group_id, local_id); local ids are only
	// unique within one construction call, so a group is always replaced
	// wholesale before saving.
	SaveSceneNodeQuery = `
		MERGE (n:SceneNode {group_id: $group_id, local_id: $local_id})
		SET n.uuid = $uuid,
			n.seq = $seq,
			n.type = $type,
			n.label = $label,
			n.confidence = $confidence,
			n.box_x = $box_x,
			n.box_y = $box_y,
			n.box_width = $box_width,
			n.box_height = $box_height,
			n.attributes = $attributes
		RETURN n.uuid AS uuid
	`

	// Relation type lives in a property because Cypher cannot parameterize
	// relationship types.
	SaveSceneEdgeQuery = `
		MATCH (source:SceneNode {group_id: $group_id, local_id: $source_id})
		MATCH (target:SceneNode {group_id: $group_id, local_id: $target_id})
		MERGE (source)-[e:RELATES {uuid: $uuid}]->(target)
		SET e.seq = $seq,
			e.group_id = $group_id,
			e.relation = $relation,
			e.confidence = $confidence,
			e.evidence = $evidence
		RETURN e.uuid AS uuid
	`

	GetGroupNodesQuery = `
		MATCH (n:SceneNode {group_id: $group_id})
		RETURN n.local_id AS local_id, n.type AS type, n.label AS label,
			n.confidence AS confidence,
			n.box_x AS box_x, n.box_y AS box_y,
			n.box_width AS box_width, n.box_height AS box_height,
			n.attributes AS attributes
		ORDER BY n.seq
	`

	GetGroupEdgesQuery = `
		MATCH (source:SceneNode {group_id: $group_id})-[e:RELATES]->(target:SceneNode {group_id: $group_id})
		RETURN e.uuid AS uuid, source.local_id AS source_id, target.local_id AS target_id,
			e.relation AS relation, e.confidence AS confidence, e.evidence AS evidence
		ORDER BY e.seq
	`

	DeleteGroupQuery = `
		MATCH (n)
		WHERE n.group_id = $group_id AND (n:SceneNode OR n:SceneGraph)
		DETACH DELETE n
	`
)
