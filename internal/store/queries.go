package store

const (
	SaveSnapshotQuery = `
		MERGE (s:Snapshot {uuid: $uuid})
		SET s.problem_id = $problem_id,
			s.created_at = $created_at,
			s.warnings = $warnings
		RETURN s.uuid AS uuid
	`

	SaveConceptQuery = `
		MERGE (n:Concept {uuid: $uuid, snapshot_id: $snapshot_id})
		SET n.kind = $kind,
			n.name = $name,
			n.aliases = $aliases,
			n.lean_code = $lean_code,
			n.lean_status = $lean_status,
			n.papers = $papers,
			n.member_count = $member_count,
			n.explanation = $explanation,
			n.centrality = $centrality,
			n.cluster_id = $cluster_id,
			n.frontier = $frontier
		WITH n
		MATCH (s:Snapshot {uuid: $snapshot_id})
		MERGE (s)-[:HAS_CONCEPT]->(n)
		RETURN n.uuid AS uuid
	`

	SaveRelationQuery = `
		MATCH (a:Concept {uuid: $from_uuid, snapshot_id: $snapshot_id})
		MATCH (b:Concept {uuid: $to_uuid, snapshot_id: $snapshot_id})
		MERGE (a)-[e:RELATED {relation: $relation, snapshot_id: $snapshot_id}]->(b)
		SET e.confidence = $confidence
		RETURN e.relation AS relation
	`

	ListSnapshotsQuery = `
		MATCH (s:Snapshot {problem_id: $problem_id})
		RETURN s.uuid AS uuid, s.created_at AS created_at
		ORDER BY s.created_at DESC
	`

	SearchConceptsQuery = `
		MATCH (n:Concept {snapshot_id: $snapshot_id})
		WHERE n.name CONTAINS $query
		RETURN n.uuid AS uuid, n.name AS name, n.kind AS kind, n.lean_status AS lean_status
		ORDER BY n.centrality DESC
		LIMIT $limit
	`
)
